package main

import (
	"flag"
	"fmt"
	"os"

	"screenreel-dx/internal/debug"
	"screenreel-dx/internal/video"
	"screenreel-dx/internal/videoscript"
)

func main() {
	scriptPath := flag.String("script", "", "Path to a JSON frame script")
	outPath := flag.String("out", "", "Path to write the encoded stream")
	enableLogging := flag.Bool("log", false, "Enable logging (disabled by default)")
	logLevel := flag.String("log-level", "trace", "Minimum log level when -log is set (error, warning, info, debug, trace)")
	flag.Parse()

	if *scriptPath == "" || *outPath == "" {
		fmt.Println("Usage: videnc -script <path.json> -out <path.bin>")
		fmt.Println("  -script <path>   Path to a JSON frame script")
		fmt.Println("  -out <path>      Path to write the encoded stream")
		fmt.Println("  -log             Enable logging (disabled by default)")
		fmt.Println("  -log-level <lvl> Minimum log level when -log is set (default: trace)")
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
		logger.SetComponentEnabled(debug.ComponentEncoder, true)
		logger.SetComponentEnabled(debug.ComponentStream, true)
		logger.SetComponentEnabled(debug.ComponentLifetime, true)
	}

	frames, err := videoscript.Load(*scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading script: %v\n", err)
		os.Exit(1)
	}

	enc := video.NewFrameEncoder(logger)
	updates, err := enc.Encode(frames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding: %v\n", err)
		os.Exit(1)
	}

	writer := video.NewStreamWriter(logger)
	stream, stats := writer.Write(updates)

	if err := os.WriteFile(*outPath, stream, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing stream: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Screenreel-DX Encoder")
	fmt.Println("=====================")
	fmt.Printf("Script:        %s\n", *scriptPath)
	fmt.Printf("Output:        %s (%d bytes)\n", *outPath, len(stream))
	fmt.Printf("Frames:        %d\n", stats.Frames)
	fmt.Printf("Library writes: %d\n", stats.LibraryWrites)
	fmt.Printf("Map writes:     %d\n", stats.MapWrites)
	fmt.Printf("Delay runs:     %d (%d frames coalesced)\n", stats.DelayRuns, stats.DelayFrames)

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
}
