// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package resources

import (
	"path"
	"strings"
)

// mimeByExt maps file extensions to MIME types. A fixed table keeps
// classification identical across hosts, unlike mime.TypeByExtension which
// consults OS registries. Unmapped extensions yield an empty MIME type.
var mimeByExt = map[string]string{
	".css":  "text/css",
	".csv":  "text/csv",
	".gif":  "image/gif",
	".html": "text/html",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".js":   "text/javascript",
	".json": "application/json",
	".md":   "text/markdown",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".py":   "text/x-python",
	".sh":   "application/x-sh",
	".svg":  "image/svg+xml",
	".toml": "application/toml",
	".txt":  "text/plain",
	".xml":  "application/xml",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
}

// MIMEForPath infers a MIME type from the path's extension, or returns ""
// when the extension is unmapped.
func MIMEForPath(p string) string {
	return mimeByExt[strings.ToLower(path.Ext(p))]
}
