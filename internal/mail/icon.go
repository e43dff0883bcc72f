package mail

import (
	"path/filepath"
	"strings"
)

// Icon returns a short label for the attachment's file type, used as the
// row icon in the attachment list.
func Icon(name, contentType string) string {
	contentType = strings.ToLower(contentType)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")

	switch {
	case strings.Contains(contentType, "pdf") || ext == "pdf":
		return "PDF"
	case strings.HasPrefix(contentType, "image/") || oneOf(ext, "jpg", "jpeg", "png", "gif", "webp", "tif", "tiff", "bmp", "heic"):
		return "IMG"
	case strings.Contains(contentType, "word") || oneOf(ext, "doc", "docx", "odt", "rtf"):
		return "DOC"
	case strings.Contains(contentType, "excel") || strings.Contains(contentType, "spreadsheet") || oneOf(ext, "xls", "xlsx", "ods", "csv"):
		return "XLS"
	case strings.Contains(contentType, "zip") || strings.Contains(contentType, "compressed") || oneOf(ext, "zip", "7z", "rar", "gz", "tar"):
		return "ZIP"
	case strings.HasPrefix(contentType, "text/") || oneOf(ext, "txt", "md", "html", "htm"):
		return "TXT"
	case contentType == "message/rfc822" || ext == "eml":
		return "EML"
	}
	return "FILE"
}

func oneOf(value string, options ...string) bool {
	for _, opt := range options {
		if value == opt {
			return true
		}
	}
	return false
}
