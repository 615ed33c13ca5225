package lexbatch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/lexicon-builder/internal/app/prompt"
	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

const taskIDPrefix = "task-"

// TaskID returns the correlation id of the task built from input pair i.
func TaskID(i int) string {
	return taskIDPrefix + strconv.Itoa(i)
}

// ParseTaskID recovers the input index from a correlation id. Only ids that
// TaskID could have produced are accepted.
func ParseTaskID(id string) (int, error) {
	raw, ok := strings.CutPrefix(id, taskIDPrefix)
	if !ok {
		return 0, fmt.Errorf("task id %q: missing %q prefix", id, taskIDPrefix)
	}

	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || TaskID(i) != id {
		return 0, fmt.Errorf("task id %q: invalid index", id)
	}
	return i, nil
}

// BuildTasks returns one chat completion task per pair, in input order.
// Task i carries TaskID(i).
func BuildTasks(pairs []domain.LemmaPair, opts prompt.Options) []openai.BatchChatCompletionRequest {
	tasks := make([]openai.BatchChatCompletionRequest, len(pairs))
	for i, p := range pairs {
		tasks[i] = openai.BatchChatCompletionRequest{
			CustomID: TaskID(i),
			Method:   "POST",
			URL:      openai.BatchEndpointChatCompletions,
			Body:     prompt.ChatRequest(opts, p.Lemma, p.POS),
		}
	}
	return tasks
}

// WriteTasks encodes tasks as JSON Lines, one task per line.
func WriteTasks(w io.Writer, tasks []openai.BatchChatCompletionRequest) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)

	for _, t := range tasks {
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("encode task %s: %w", t.CustomID, err)
		}
	}
	return bw.Flush()
}
