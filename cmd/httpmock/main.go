// httpmock CLI - validate rule files and see how requests match them
package main

import (
	"os"

	"github.com/getmockd/httpmock/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
