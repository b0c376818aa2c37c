// pikey-console is an interactive terminal for the pi-key maintenance
// console. Most input is forwarded to the device verbatim; a few local
// commands push macro files with quoting and a CRC trailer attached.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/puckawayjeff/pi-key/host/console"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "Serial device path")
)

func main() {
	flag.Parse()

	fmt.Println("pi-key console")
	fmt.Println("==============")

	fmt.Printf("Connecting to %s...\n", *device)
	client, err := console.Dial(*device)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	// Show device identity up front. A device already in run mode still
	// answers, because the console stays serviced there.
	if lines, err := client.Do("info"); err == nil {
		for _, l := range lines {
			fmt.Println(l)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Warning: device did not answer info: %v\n", err)
	}

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printLocalHelp()
			forward(client, "help")

		case "push-macro":
			pushFile(client, "macro", parts)

		case "push-keepalive":
			pushFile(client, "keep_alive_macro", parts)

		default:
			forward(client, line)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func printLocalHelp() {
	fmt.Println("Local commands:")
	fmt.Println("  push-macro <file>      - Push a macro file to the device")
	fmt.Println("  push-keepalive <file>  - Push a keep-alive macro file")
	fmt.Println("  quit/exit/q            - Exit the program")
	fmt.Println("Everything else is sent to the device:")
}

// forward sends one line to the device and prints the response the way
// the device framed it.
func forward(client *console.Client, line string) {
	lines, err := client.Do(line)
	for _, l := range lines {
		fmt.Println(l)
	}
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Println("ok")
}

// pushFile reads a macro file and pushes it as a setting. A single
// trailing newline is stripped so editors do not smuggle one into the
// macro text.
func pushFile(client *console.Client, key string, parts []string) {
	if len(parts) != 2 {
		fmt.Printf("usage: %s <file>\n", parts[0])
		return
	}

	data, err := os.ReadFile(parts[1])
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	text := strings.TrimRight(string(data), "\r\n")

	if err := client.PushSetting(key, text); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("ok (%d bytes pushed to %s; reset to apply in run mode)\n", len(text), key)
}
