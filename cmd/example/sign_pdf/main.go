package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/SeakMengs/DocSign/pkg/docsign"
)

// Signs a local PDF without the API, e.g.
// go run ./cmd/example/sign_pdf -in contract.pdf -a-name "Jane" -a-image jane.txt -mode merge
func main() {
	in := flag.String("in", "", "source PDF")
	out := flag.String("out", "signed.pdf", "output PDF")
	mode := flag.String("mode", "append", "append or merge")
	fontDir := flag.String("fonts", "fonts", "font directory")
	aName := flag.String("a-name", "", "name of party A")
	aImage := flag.String("a-image", "", "file holding the data URL of party A's signature")
	bName := flag.String("b-name", "", "name of party B")
	bImage := flag.String("b-image", "", "file holding the data URL of party B's signature")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read source: %v", err)
	}

	cfg := docsign.NewDefaultConfig()
	cfg.FontDir = *fontDir
	cfg.DefaultMode, err = docsign.ParseMode(*mode, docsign.ModeAppend)
	if err != nil {
		log.Fatal(err)
	}

	signer, problems, err := docsign.LoadSigner(cfg)
	if err != nil {
		log.Fatalf("Failed to set up signer: %v", err)
	}
	for _, p := range problems {
		log.Println(p)
	}

	result, err := signer.SignDocument(context.Background(), source,
		signerRequest(*aName, *aImage), signerRequest(*bName, *bImage), cfg.DefaultMode)
	if err != nil {
		log.Fatalf("Failed to sign: %v", err)
	}
	for _, w := range result.Warnings {
		log.Println(w)
	}

	if err := os.WriteFile(*out, result.Bytes, 0644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	fmt.Printf("Saved %d pages to %q (%s)\n", result.PageCount, *out, cfg.DefaultMode)
}

func signerRequest(name, imageFile string) *docsign.SignerRequest {
	if name == "" && imageFile == "" {
		return nil
	}

	req := &docsign.SignerRequest{Name: name}
	if imageFile != "" {
		dataURL, err := os.ReadFile(imageFile)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", imageFile, err)
		}
		req.ImageDataURL = string(dataURL)
	}
	return req
}
