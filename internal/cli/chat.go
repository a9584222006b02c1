package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// runChat sends one message. With -history-file the transcript is read from
// and, after a successful reply, written back to that file; the server never
// keeps it.
func runChat(ctx context.Context, client *apiClient, stdout io.Writer, stderr io.Writer, args []string) int {
	flags := flag.NewFlagSet("chat", flag.ContinueOnError)
	flags.SetOutput(stderr)

	message := flags.String("message", "", "Message to send")
	historyFile := flags.String("history-file", "", "JSON file holding the conversation transcript")
	if err := flags.Parse(args); err != nil {
		writeCLIError(stdout, "invalid_arguments", err.Error(), 0)
		return 2
	}
	if strings.TrimSpace(*message) == "" {
		writeCLIError(stdout, "missing_message", "chat requires -message", 0)
		return 2
	}

	history, err := loadTranscript(*historyFile)
	if err != nil {
		writeCLIError(stdout, "invalid_history", err.Error(), 0)
		return 2
	}

	responseBody, err := client.requestJSON(ctx, http.MethodPost, "/api/chat", map[string]any{
		"message": *message,
		"history": history,
	})
	if err != nil {
		return writeResponse(stdout, nil, err)
	}

	if *historyFile != "" {
		var reply struct {
			Response string `json:"response"`
		}
		if err := json.Unmarshal(responseBody, &reply); err != nil {
			writeCLIError(stdout, "invalid_response", err.Error(), 0)
			return 1
		}
		history = append(history, "User: "+*message, "AI: "+reply.Response)
		if err := saveTranscript(*historyFile, history); err != nil {
			writeCLIError(stdout, "history_write_failed", err.Error(), 0)
			return 1
		}
	}

	return writeResponse(stdout, responseBody, nil)
}

func loadTranscript(path string) ([]string, error) {
	history := []string{}
	if path == "" {
		return history, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return history, nil
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return history, nil
	}
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func saveTranscript(path string, history []string) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}
