// SPDX-License-Identifier: EPL-2.0

// Command audmix plays and renders mixes of preloaded sounds.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
