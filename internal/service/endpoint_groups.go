package service

// Group names used by environment processing
const (
	GroupCalibre     = "Calibre"
	GroupLibreOffice = "LibreOffice"
	GroupOCRmyPDF    = "OCRmyPDF"
	GroupPython      = "Python"
)

type endpointGroup struct {
	name      string
	endpoints []string
}

// defaultEndpointGroups is the built-in membership table. An endpoint can be
// listed under a feature group and a tooling group at the same time.
var defaultEndpointGroups = []endpointGroup{
	{"PageOps", []string{
		"remove-pages", "merge-pdfs", "split-pdfs", "pdf-organizer", "rotate-pdf",
		"multi-page-layout", "scale-pages", "adjust-contrast", "crop", "auto-split-pdf",
		"extract-page", "pdf-to-single-page", "split-by-size-or-count", "overlay-pdf",
		"split-pdf-by-sections",
	}},
	{"Convert", []string{
		"pdf-to-img", "img-to-pdf", "pdf-to-pdfa", "file-to-pdf", "xlsx-to-pdf",
		"pdf-to-word", "pdf-to-presentation", "pdf-to-text", "pdf-to-html", "pdf-to-xml",
		"html-to-pdf", "url-to-pdf", "markdown-to-pdf", "pdf-to-csv",
	}},
	{"Security", []string{
		"add-password", "remove-password", "change-permissions", "add-watermark",
		"cert-sign", "sanitize-pdf", "auto-redact",
	}},
	{"Other", []string{
		"ocr-pdf", "add-image", "compress-pdf", "extract-images", "change-metadata",
		"extract-image-scans", "sign", "flatten", "repair", "remove-blanks",
		"remove-annotations", "compare", "add-page-numbers", "auto-rename",
		"get-info-on-pdf", "show-javascript",
	}},
	{"CLI", []string{
		"compress-pdf", "extract-image-scans", "repair", "pdf-to-pdfa", "file-to-pdf",
		"xlsx-to-pdf", "pdf-to-word", "pdf-to-presentation", "pdf-to-text", "pdf-to-html",
		"pdf-to-xml", "ocr-pdf", "html-to-pdf", "url-to-pdf", "book-to-pdf", "pdf-to-book",
	}},
	{GroupCalibre, []string{"book-to-pdf", "pdf-to-book"}},
	{GroupPython, []string{"extract-image-scans", "remove-blanks", "html-to-pdf", "url-to-pdf"}},
	{"OpenCV", []string{"extract-image-scans", "remove-blanks"}},
	{GroupLibreOffice, []string{
		"repair", "file-to-pdf", "xlsx-to-pdf", "pdf-to-word", "pdf-to-presentation",
		"pdf-to-text", "pdf-to-html", "pdf-to-xml",
	}},
	{GroupOCRmyPDF, []string{"compress-pdf", "pdf-to-pdfa", "ocr-pdf"}},
	{"Java", []string{
		"merge-pdfs", "remove-pages", "split-pdfs", "pdf-organizer", "rotate-pdf",
		"pdf-to-img", "img-to-pdf", "add-password", "remove-password", "change-permissions",
		"add-watermark", "add-image", "extract-images", "change-metadata", "cert-sign",
		"multi-page-layout", "scale-pages", "add-page-numbers", "auto-rename", "auto-split-pdf",
		"sanitize-pdf", "crop", "get-info-on-pdf", "extract-page", "pdf-to-single-page",
		"markdown-to-pdf", "show-javascript", "auto-redact", "pdf-to-csv",
		"split-by-size-or-count", "overlay-pdf", "split-pdf-by-sections", "remove-blanks",
	}},
	{"Javascript", []string{"pdf-organizer", "sign", "compare", "adjust-contrast"}},
}

// toolCommands maps a tooling group to the executable it needs
var toolCommands = map[string]string{
	GroupCalibre:     "ebook-convert",
	GroupLibreOffice: "soffice",
	GroupOCRmyPDF:    "ocrmypdf",
	GroupPython:      "python3",
}
