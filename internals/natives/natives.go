// Package natives unpacks the platform specific shared libraries minecraft
// needs from their jar archives into one flat directory.
package natives

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver/v3"
	"github.com/spf13/afero"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/platform"
)

// Source selects the archives an ExtractRule looks at
type Source int

const (
	// SourceClasspath are the regular library jars
	SourceClasspath Source = iota
	// SourceNatives are the native classifier jars
	SourceNatives
)

// ExtractRule copies single entries out of matching archives. It covers
// libraries that ship a native file outside of the usual native classifier jars
type ExtractRule struct {
	// Match selects every archive whose path contains this string
	Match string
	// Source is the archive list Match is applied to
	Source Source
	// EntrySuffix selects the archive entries to copy
	EntrySuffix string
	// Dest is the file name inside the natives directory
	Dest string
}

// DefaultRules returns the extra extraction rules for p
func DefaultRules(p platform.Platform) []ExtractRule {
	if p.Name != platform.Linux.Name {
		return nil
	}
	return []ExtractRule{
		// the narrator library bundles flite inside the regular jar
		{Match: "text2speech", Source: SourceClasspath, EntrySuffix: "libflite.so", Dest: "libflite.so"},
	}
}

// Extractor extracts native libraries
type Extractor struct {
	Fs       afero.Fs
	Platform platform.Platform
	Rules    []ExtractRule
}

// New returns an extractor using the default rules of p
func New(fs afero.Fs, p platform.Platform) *Extractor {
	return &Extractor{Fs: fs, Platform: p, Rules: DefaultRules(p)}
}

// Extract copies every native library found in archives into dir (flattened to
// the base name) and applies the extraction rules to classpath or archives. Nothing happens
// if dir already contains files. Archives that can not be read are skipped.
// It returns the number of extracted files
func (e *Extractor) Extract(archives []string, classpath []string, dir string) (int, error) {
	empty, err := e.isEmpty(dir)
	if err != nil {
		return 0, err
	}
	if !empty {
		return 0, nil
	}
	if err := e.Fs.MkdirAll(dir, os.ModePerm); err != nil {
		return 0, err
	}

	extracted := 0
	for _, archive := range archives {
		n, err := e.copyEntries(archive, dir, func(name string) (string, bool) {
			return name, e.Platform.IsNative(name)
		})
		extracted += n
		if err != nil {
			log.Printf("[WARN] could not extract natives from %s: %v", archive, err)
		}
	}

	for _, rule := range e.Rules {
		sources := classpath
		if rule.Source == SourceNatives {
			sources = archives
		}
		for _, entry := range sources {
			if !strings.Contains(entry, rule.Match) {
				continue
			}
			rule := rule
			n, err := e.copyEntries(entry, dir, func(name string) (string, bool) {
				return rule.Dest, strings.HasSuffix(name, rule.EntrySuffix)
			})
			extracted += n
			if err != nil {
				log.Printf("[WARN] could not extract %s from %s: %v", rule.Dest, entry, err)
			}
		}
	}
	return extracted, nil
}

func (e *Extractor) isEmpty(dir string) (bool, error) {
	exists, err := afero.DirExists(e.Fs, dir)
	if err != nil || !exists {
		return true, err
	}
	return afero.IsEmpty(e.Fs, dir)
}

// copyEntries copies every entry of archive for which pick returns true into dir
func (e *Extractor) copyEntries(archive string, dir string, pick func(name string) (string, bool)) (int, error) {
	if ok, _ := afero.Exists(e.Fs, archive); !ok {
		return 0, fmt.Errorf("%s does not exist", archive)
	}
	f, err := e.Fs.Open(archive)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	z := archiver.NewZip()
	if err := z.Open(f, info.Size()); err != nil {
		return 0, err
	}
	defer z.Close()

	copied := 0
	for {
		entry, err := z.Read()
		if err == io.EOF {
			return copied, nil
		}
		if err != nil {
			return copied, err
		}
		if entry.IsDir() {
			entry.Close()
			continue
		}
		// Name is the base name of the entry, directories are flattened
		dest, ok := pick(entry.Name())
		if !ok {
			entry.Close()
			continue
		}
		err = e.write(filepath.Join(dir, dest), entry)
		entry.Close()
		if err != nil {
			return copied, err
		}
		copied++
	}
}

func (e *Extractor) write(target string, r io.Reader) error {
	out, err := e.Fs.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
