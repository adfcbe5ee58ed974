// Package mimetype resolves short file-extension tokens to full MIME type
// strings. Unknown tokens never fail; they resolve to a generic binary type.
package mimetype

import "strings"

// DefaultType is returned for tokens with no table entry.
const DefaultType = "application/octet-stream"

var byExtension = map[string]string{
	"aac":  "audio/aac",
	"avi":  "video/x-msvideo",
	"bin":  "application/octet-stream",
	"bmp":  "image/bmp",
	"css":  "text/css",
	"csv":  "text/csv",
	"doc":  "application/msword",
	"gif":  "image/gif",
	"gz":   "application/gzip",
	"htm":  "text/html",
	"html": "text/html",
	"ico":  "image/vnd.microsoft.icon",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"js":   "text/javascript",
	"json": "application/json",
	"mp3":  "audio/mpeg",
	"mp4":  "video/mp4",
	"otf":  "font/otf",
	"pdf":  "application/pdf",
	"png":  "image/png",
	"rtf":  "application/rtf",
	"svg":  "image/svg+xml",
	"tar":  "application/x-tar",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"ttf":  "font/ttf",
	"txt":  "text/plain",
	"wav":  "audio/wav",
	"webm": "video/webm",
	"webp": "image/webp",
	"xml":  "application/xml",
	"zip":  "application/zip",
}

// ByExtension returns the MIME type for an extension token such as "json" or
// "txt". A leading dot is tolerated. Lookup is case-insensitive and pure:
// the same token always resolves to the same string, and unknown tokens
// resolve to DefaultType rather than failing.
func ByExtension(token string) string {
	token = strings.ToLower(strings.TrimPrefix(token, "."))
	if mime, ok := byExtension[token]; ok {
		return mime
	}
	return DefaultType
}
