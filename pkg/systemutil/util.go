package systemutil

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpcloud/tail"
)

// StreamLog tailing a file
func StreamLog(path string) {
	t, err := tail.TailFile(path, tail.Config{Follow: true})
	if err != nil {
		log.Printf("error: %v\n", err)
	}
	for line := range t.Lines {
		fmt.Println(line.Text)
	}
}

// WriteLog appends a message to the log file, creating parent directories
// as needed. An empty logPath sends the message to stdout only.
func WriteLog(logPath string, message string) error {
	if len(logPath) == 0 {
		fmt.Println(message)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), os.ModePerm); err != nil {
		return err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}
	_, err = f.WriteString(message)
	return err
}

// WriteLogSection writes a banner line followed by a block of output. Each
// pipeline stage reports its command and captured streams through this.
func WriteLogSection(logPath string, banner string, body string) error {
	if err := WriteLog(logPath, "##### "+banner); err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return WriteLog(logPath, body)
}
