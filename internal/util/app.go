package util

func GetAppName() string {
	return "DocSign"
}

// ViewPath is the relative URL a stored document is served from.
func ViewPath(documentID string) string {
	return "/view/" + documentID
}
