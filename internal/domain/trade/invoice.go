package trade

import "fmt"

// FabricInvoice is the invoice document attached to an order
type FabricInvoice struct {
	Number     string
	MimeType   string
	Filename   string
	SizeBytes  int64
	StorageKey string
	Data       []byte
}

// DownloadFilename returns the stored filename or the default one
func (i *FabricInvoice) DownloadFilename() string {
	if i.Filename != "" {
		return i.Filename
	}
	return fmt.Sprintf("fabric_invoice_%s.pdf", i.Number)
}

// ContentType returns the stored MIME type, defaulting to PDF
func (i *FabricInvoice) ContentType() string {
	if i.MimeType != "" {
		return i.MimeType
	}
	return "application/pdf"
}
