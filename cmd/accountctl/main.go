package main

import (
	"fmt"
	"os"

	"github.com/storefront/account-api/cmd/accountctl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
