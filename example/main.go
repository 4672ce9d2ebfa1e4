// Example program demonstrating the gitversion library API.
//
// Run from the repo root:
//
//	go run ./example/
//
// Pass a clone URL to compute the version of a remote repository:
//
//	go run ./example/ https://github.com/MyCarrier-DevOps/go-gitversion.git
package main

import (
	"fmt"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/MyCarrier-DevOps/go-gitversion/pkg/sdk"
)

func main() {
	localVersion()

	if len(os.Args) > 1 {
		dynamicVersion(os.Args[1])
	}
}

func localVersion() {
	result, err := sdk.Calculate(sdk.Options{
		Path: ".",
	})
	if err != nil {
		log.Fatalf("local calculation failed: %v", err)
	}

	printVersion("Local", result)
}

func dynamicVersion(url string) {
	result, err := sdk.Calculate(sdk.Options{
		URL:    url,
		Branch: "main",
	})
	if err != nil {
		log.Fatalf("dynamic repository calculation failed: %v", err)
	}

	printVersion("Dynamic", result)
}

func printVersion(label string, result *sdk.Result) {
	fmt.Printf("=== %s Version ===\n", label)

	for _, k := range slices.Sorted(maps.Keys(result.Variables)) {
		fmt.Printf("%-40s %s\n", k, result.Variables[k])
	}
	fmt.Println()
}
