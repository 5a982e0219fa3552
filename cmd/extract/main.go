package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"vision2schedule-backend/internal/extraction"
)

// Reads OCR text from a file (or stdin) and prints the extracted event
// record as JSON. Useful for tuning extractors against real flyer text.
func main() {
	inputPath := flag.String("input", "", "path to a text file (default: stdin)")
	flag.Parse()

	var rawText []byte
	var err error
	if *inputPath != "" {
		rawText, err = os.ReadFile(*inputPath)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *inputPath, err)
		}
	} else {
		rawText, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("Failed to read stdin: %v", err)
		}
	}

	event := extraction.NewPipeline().Extract(string(rawText))

	output, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	fmt.Println(string(output))
}
