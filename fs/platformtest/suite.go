// Package platformtest provides a conformance test suite for validating
// document store providers against the platform.Platform contract.
//
// Providers import this package from their tests and run the suite against
// fresh, empty stores:
//
//	func TestMyProvider(t *testing.T) {
//	    platformtest.TestSuite(t, func() platform.Platform {
//	        return myprovider.New()
//	    })
//	}
//
// The suite checks behavior the shim relies on: missing entries reported by
// GetInfo rather than failing, non-recursive MakeDirectory refusing missing
// parents, sorted ReadDirectory results, recursive Delete, Move replacing
// files and URI sandboxing.
package platformtest

import (
	"context"
	"testing"

	"github.com/GenerousLabs/expo-fs/fs/platform"
)

// Config adapts the suite to a provider.
type Config struct {
	// SkipTests lists test groups to skip, e.g. "Copy".
	SkipTests []string
}

// TestSuite runs all conformance tests. newPlatform must return a fresh,
// empty store for each call.
func TestSuite(t *testing.T, newPlatform func() platform.Platform) {
	TestSuiteWithConfig(t, newPlatform, Config{})
}

// TestSuiteWithConfig runs the conformance tests with configuration.
func TestSuiteWithConfig(t *testing.T, newPlatform func() platform.Platform, config Config) {
	shouldSkip := func(testName string) bool {
		for _, skip := range config.SkipTests {
			if skip == testName {
				return true
			}
		}
		return false
	}

	groups := []struct {
		name string
		run  func(*testing.T, platform.Platform)
	}{
		{"Info", TestInfo},
		{"Directories", TestDirectories},
		{"Files", TestFiles},
		{"Delete", TestDelete},
		{"Move", TestMove},
		{"Copy", TestCopy},
		{"URIs", TestURIs},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if shouldSkip(g.name) {
				t.Skip("Skipped by provider configuration")
				return
			}
			g.run(t, newPlatform())
		})
	}
}

// uri returns the URI of rel under the store's document directory.
func uri(p platform.Platform, rel string) string {
	return platform.Join(p.DocumentDirectory(), rel)
}

func mkdir(t *testing.T, p platform.Platform, rel string) {
	t.Helper()
	err := p.MakeDirectory(context.Background(), uri(p, rel), platform.MakeDirectoryOptions{Intermediates: true})
	if err != nil {
		t.Fatalf("MakeDirectory(%s): setup failed: %v", rel, err)
	}
}

func write(t *testing.T, p platform.Platform, rel, contents string) {
	t.Helper()
	err := p.WriteAsString(context.Background(), uri(p, rel), contents, platform.WriteOptions{Encoding: platform.EncodingUTF8})
	if err != nil {
		t.Fatalf("WriteAsString(%s): setup failed: %v", rel, err)
	}
}

func read(t *testing.T, p platform.Platform, rel string) string {
	t.Helper()
	s, err := p.ReadAsString(context.Background(), uri(p, rel), platform.ReadOptions{Encoding: platform.EncodingUTF8})
	if err != nil {
		t.Fatalf("ReadAsString(%s): got error %v, want nil", rel, err)
	}
	return s
}

func info(t *testing.T, p platform.Platform, rel string) *platform.Info {
	t.Helper()
	i, err := p.GetInfo(context.Background(), uri(p, rel))
	if err != nil {
		t.Fatalf("GetInfo(%s): got error %v, want nil", rel, err)
	}
	return i
}

func wantCode(t *testing.T, op string, err error, code platform.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: got nil error, want %s", op, code)
		return
	}
	if !platform.IsCode(err, code) {
		t.Errorf("%s: got error %v, want %s", op, err, code)
	}
}
