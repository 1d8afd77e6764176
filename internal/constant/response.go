package constant

const (
	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"
)

const (
	PDF_CONTENT_TYPE  = "application/pdf"
	DOCX_EXTENSION    = ".docx"
	PDF_VIEW_URL_HEAD = "X-PDF-View-URL"
)
