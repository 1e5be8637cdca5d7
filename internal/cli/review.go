package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"code_reviewer/internal/domain"
	"code_reviewer/internal/shared"
)

type reviewFlags struct {
	prompt  string
	workers int
	timeout time.Duration
}

type input struct {
	name string
	code string
}

func newReviewCommand(factory ReviewerFactory) *cobra.Command {
	var f reviewFlags
	cmd := &cobra.Command{
		Use:   "review [file ...]",
		Short: "Review files (or stdin when no file or - is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(cmd, factory, f, args)
		},
	}
	cmd.Flags().StringVarP(&f.prompt, "prompt", "p", "", "Review instruction (default: configured instruction)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 2, "Files reviewed in parallel")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 5*time.Minute, "Overall time limit")
	return cmd
}

func runReview(cmd *cobra.Command, factory ReviewerFactory, f reviewFlags, args []string) error {
	inputs, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	cfg := shared.Load()
	instruction := strings.TrimSpace(f.prompt)
	if instruction == "" {
		instruction = cfg.Instruction
	}
	if f.workers <= 0 {
		f.workers = 1
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
	defer cancel()

	reviewer, closeFn, err := factory(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build reviewer: %w", err)
	}
	defer func() {
		if closeFn != nil {
			_ = closeFn()
		}
	}()

	out := make([]string, len(inputs))
	errs := make([]error, len(inputs))
	sem := semaphore.NewWeighted(int64(f.workers))
	var wg sync.WaitGroup

	for i, in := range inputs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(inputs); j++ {
				errs[j] = fmt.Errorf("%s: %w", inputs[j].name, err)
			}
			break
		}
		wg.Add(1)
		go func(i int, in input) {
			defer wg.Done()
			defer sem.Release(1)

			if strings.TrimSpace(in.code) == "" {
				errs[i] = fmt.Errorf("%s: %w", in.name, domain.ErrCodeRequired)
				return
			}
			res, err := reviewer.Review(ctx, in.code, instruction)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", in.name, err)
				return
			}
			log.Debug().Str("file", in.name).Int("length", len(res.CombinedText)).Msg("review done")
			out[i] = res.CombinedText
		}(i, in)
	}
	wg.Wait()

	w := cmd.OutOrStdout()
	var failed int
	for i, in := range inputs {
		if errs[i] != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "review failed: %v\n", errs[i])
			continue
		}
		fmt.Fprintf(w, "## %s\n\n%s\n\n", in.name, out[i])
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d reviews failed", failed, len(inputs))
	}
	return nil
}

func readInputs(stdin io.Reader, args []string) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	inputs := make([]input, 0, len(args))
	for _, a := range args {
		if a == "-" {
			b, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			inputs = append(inputs, input{name: "stdin", code: string(b)})
			continue
		}
		b, err := os.ReadFile(a)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{name: a, code: string(b)})
	}
	return inputs, nil
}
