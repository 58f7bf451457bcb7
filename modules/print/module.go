package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"sync"

	"github.com/vk/gridsched/internal/ctxlog"
	"github.com/vk/gridsched/internal/registry"
)

// Module implements the registry.Module interface for this package.
// Out defaults to os.Stdout.
type Module struct {
	Out io.Writer
}

// Input defines the arguments for the print handler.
type Input struct {
	Message string            `hcl:"message,optional"`
	Values  map[string]string `hcl:"values,optional"`
}

// printer serializes writes from tasks running in parallel.
type printer struct {
	mu  sync.Mutex
	out io.Writer
}

// OnRunPrint writes the message, then each value sorted by key.
func (p *printer) OnRunPrint(ctx context.Context, input *Input) error {
	ctxlog.FromContext(ctx).Debug("Printing input.")

	p.mu.Lock()
	defer p.mu.Unlock()

	if input.Message == "" && len(input.Values) == 0 {
		_, err := fmt.Fprintln(p.out, "      (null)")
		return err
	}
	if input.Message != "" {
		if _, err := fmt.Fprintln(p.out, input.Message); err != nil {
			return err
		}
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(input.Values))
	for k := range input.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(p.out, "      %s = %q\n", k, input.Values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	p := &printer{out: out}
	r.RegisterHandler("print", &registry.RegisteredHandler{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        p.OnRunPrint,
	})
}
