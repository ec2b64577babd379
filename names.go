// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import (
	"path/filepath"
	"strings"
)

// Event name suffixes. These are the wire contract between peers and must
// never change.
const (
	suffixMessageSending = "_MessageSending"
	suffixMessageRead    = "_MessageRead"
	suffixBytesWritten   = "_BytesWritten"
	suffixBytesRead      = "_BytesRead"
)

// sanitizeName maps an arbitrary channel name (callers may pass values like
// `Local\test`) onto a string safe to embed in a filesystem path component by
// replacing `\`, `/`, `:` and space with `_`. Names that differ only in those
// characters map to the same string.
func sanitizeName(name string) string {
	r := strings.NewReplacer(
		`\`, "_",
		"/", "_",
		":", "_",
		" ", "_",
	)
	return r.Replace(name)
}

// regionKey returns the filesystem path used to back the shared page for a
// channel name under baseDir.
func regionKey(name, baseDir string) string {
	return filepath.Join(baseDir, sanitizeName(name)+".shmpage")
}

// eventKey returns the filesystem path used to back one named event for a
// channel name under baseDir.
func eventKey(name, suffix, baseDir string) string {
	return filepath.Join(baseDir, sanitizeName(name)+suffix)
}
