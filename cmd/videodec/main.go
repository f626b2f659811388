package main

import (
	"flag"
	"fmt"
	"os"

	"screenreel-dx/internal/debug"
	"screenreel-dx/internal/video"
)

func main() {
	streamPath := flag.String("stream", "", "Path to an encoded stream")
	preview := flag.Bool("preview", false, "Play the decoded frames back in an SDL window")
	scale := flag.Int("scale", 2, "Preview display scale (1-6)")
	enableLogging := flag.Bool("log", false, "Enable logging (disabled by default)")
	logLevel := flag.String("log-level", "trace", "Minimum log level when -log is set (error, warning, info, debug, trace)")
	flag.Parse()

	if *streamPath == "" {
		fmt.Println("Usage: videodec -stream <path.bin> [-preview] [-scale <1-6>]")
		fmt.Println("  -stream <path>   Path to an encoded stream")
		fmt.Println("  -preview         Play the decoded frames back in an SDL window")
		fmt.Println("  -scale <1-6>     Preview display scale (default: 2)")
		fmt.Println("  -log             Enable logging (disabled by default)")
		fmt.Println("  -log-level <lvl> Minimum log level when -log is set (default: trace)")
		os.Exit(1)
	}
	if *preview && (*scale < 1 || *scale > 6) {
		fmt.Fprintf(os.Stderr, "Error: scale must be between 1 and 6\n")
		os.Exit(1)
	}

	var logger *debug.Logger
	if *enableLogging {
		level, err := debug.ParseLogLevel(*logLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger = debug.NewLogger(10000)
		logger.SetMinLevel(level)
		logger.SetComponentEnabled(debug.ComponentDecoder, true)
	}

	data, err := os.ReadFile(*streamPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stream: %v\n", err)
		os.Exit(1)
	}

	reader := video.NewStreamReader(logger)
	screens, err := reader.Read(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding stream: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Screenreel-DX Decoder")
	fmt.Println("=====================")
	fmt.Printf("Stream: %s (%d bytes)\n", *streamPath, len(data))
	fmt.Printf("Frames: %d\n", len(screens))

	if logger != nil {
		logger.Shutdown()
		recent := logger.GetRecentEntries(20)
		if len(recent) > 0 {
			fmt.Printf("\nLast %d log entries:\n", len(recent))
			for _, entry := range recent {
				fmt.Println(entry.Format())
			}
		}
	}

	if !*preview {
		return
	}

	p, err := newPreview(*scale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating preview window: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	fmt.Println("\nControls:")
	fmt.Println("  ESC - Quit")
	if err := p.Play(screens); err != nil {
		fmt.Fprintf(os.Stderr, "Preview error: %v\n", err)
		os.Exit(1)
	}
}
