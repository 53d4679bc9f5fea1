// Command ask is the interactive mode: it builds the index, reads one
// question from stdin, and prints the retrieved chunks with their similarity
// scores followed by the grounded answer.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ragserve/internal/bootstrap"
	"ragserve/internal/config"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	fmt.Print("\nAsk a question about the document: ")
	reader := bufio.NewReader(os.Stdin)
	question, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("read question: %v", err)
	}
	question = strings.TrimSpace(question)

	answer, err := app.QueryUC.Answer(ctx, question, cfg.RAGTopK)
	if err != nil {
		log.Fatalf("query error: %v", err)
	}

	separator := strings.Repeat("=", 60)
	fmt.Printf("\n%s\n  RETRIEVED CHUNKS\n%s\n\n", separator, separator)
	for rank, hit := range answer.Sources {
		fmt.Printf("  Chunk #%d (index %d)\n", rank+1, hit.Chunk.Index)
		fmt.Printf("  Similarity: %.2f%%  |  %d chars\n", hit.Score*100, len(hit.Chunk.Text))
		for _, line := range strings.Split(hit.Chunk.Text, "\n") {
			fmt.Printf("    %s\n", line)
		}
		fmt.Println()
	}

	fmt.Printf("%s\n  ANSWER\n%s\n\n", separator, separator)
	if !answer.Found {
		fmt.Println("The answer was not found in the document context.")
		return
	}
	fmt.Println(answer.Text)
}
