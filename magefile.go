//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// Build compiles every executable into ./bin
func Build() error {
	mg.Deps(BuildHistogrammer)
	mg.Deps(BuildMeasureBinning)
	fmt.Println("Compilation finished")
	return nil
}

func BuildHistogrammer() error {
	fmt.Println("Building histogrammer executable...")
	return goBuild("./bin/histogrammer", "./histogrammer")
}

func BuildMeasureBinning() error {
	fmt.Println("Building measureBinning executable...")
	return goBuild("./bin/measureBinning", "./measureBinning")
}

// Test runs the unit tests of the library
func Test() error {
	return sh.RunV("go", "test", "./pkg/...")
}

// TestProperty runs the property-based tests as well
func TestProperty() error {
	return sh.RunV("go", "test", "-tags", "property", "./pkg/...")
}

func goBuild(output string, pkg string) error {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command("go", "build", "-o", output, pkg)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
