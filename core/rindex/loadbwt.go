// core/rindex/loadbwt.go
//
// LoadFromPrefix builds an Index from the external builder's BWT
// files at <ref>.bwt or <ref>.bwt.heads/<ref>.bwt.len (spec.md §6),
// using scoped file handles that are guaranteed closed on every exit
// path.
package rindex

import (
	"fmt"
	"os"

	"msri-core/rlbwt"
)

// LoadFromPrefix tries <ref>.bwt.heads + <ref>.bwt.len first, falling
// back to the plain <ref>.bwt stream (spec.md §4.1's "the loader
// accepts either").
func LoadFromPrefix(refPrefix string) (*Index, error) {
	bwt, err := loadBWT(refPrefix)
	if err != nil {
		return nil, err
	}
	return New(bwt)
}

func loadBWT(refPrefix string) (*rlbwt.RLBWT, error) {
	headsPath := refPrefix + ".bwt.heads"
	lenPath := refPrefix + ".bwt.len"
	if fileExists(headsPath) && fileExists(lenPath) {
		return loadHeadsLengths(headsPath, lenPath)
	}

	plainPath := refPrefix + ".bwt"
	fh, err := os.Open(plainPath)
	if err != nil {
		return nil, &LoadError{Kind: LoadIO, Msg: "open " + plainPath, Err: err}
	}
	defer func() { _ = fh.Close() }()

	bwt, err := rlbwt.LoadPlain(fh)
	if err != nil {
		return nil, &LoadError{Kind: LoadFormat, Msg: "parse " + plainPath, Err: err}
	}
	return bwt, nil
}

func loadHeadsLengths(headsPath, lenPath string) (*rlbwt.RLBWT, error) {
	headsFh, err := os.Open(headsPath)
	if err != nil {
		return nil, &LoadError{Kind: LoadIO, Msg: "open " + headsPath, Err: err}
	}
	defer func() { _ = headsFh.Close() }()

	lenFh, err := os.Open(lenPath)
	if err != nil {
		return nil, &LoadError{Kind: LoadIO, Msg: "open " + lenPath, Err: err}
	}
	defer func() { _ = lenFh.Close() }()

	bwt, err := rlbwt.LoadHeadsLengths(headsFh, lenFh)
	if err != nil {
		return nil, &LoadError{Kind: LoadFormat, Msg: fmt.Sprintf("parse %s/%s", headsPath, lenPath), Err: err}
	}
	return bwt, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
