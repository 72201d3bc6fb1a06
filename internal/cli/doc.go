// Package cli implements the healthdigest command-line interface.
//
// Each Cobra command parses its flags, fills in anything left unset from
// the loaded configuration, then delegates to a plain function that takes
// its input and output streams explicitly:
//
//	healthdigest render [file]   - HTML summary of a records file
//	healthdigest compose [file]  - status notification, one table per host
//	healthdigest preview [file]  - the same summary rendered for the terminal
//	healthdigest record          - build one record from captured output
//	healthdigest init            - create .healthdigest.yaml
//
// Records are read from the named file, or from stdin when it is piped.
// Global flags (--config, --verbose, --no-color) are defined on the root
// command.
package cli
