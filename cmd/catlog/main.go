// Command catlog emits and renders catlog records from the shell.
//
//	catlog emit --category api --severity error --error "boom" timeout
//	tail -f app.ndjson | catlog render --format console
//	catlog categories
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
