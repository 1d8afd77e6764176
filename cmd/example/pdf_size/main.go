package main

import (
	"fmt"
	"io"
	"os"

	"github.com/SeakMengs/DocSign/pkg/docsign"
)

func main() {
	pdfFilePath := "static/pdfs/signed.pdf"
	if len(os.Args) > 1 {
		pdfFilePath = os.Args[1]
	}

	src, err := os.Open(pdfFilePath)
	if err != nil {
		panic(err)
	}
	defer src.Close()

	pageCount, err := docsign.GetPageCount(src)
	if err != nil {
		panic(err)
	}
	if pageCount < 1 {
		panic("pdf has no pages")
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		panic(err)
	}
	width, height, err := docsign.GetPdfPageSize(src, pageCount)
	if err != nil {
		panic(err)
	}
	fmt.Printf("PDF Page Count: %d\n", pageCount)
	fmt.Printf("Last Page Size: %.2f x %.2f px\n", width, height)
}
