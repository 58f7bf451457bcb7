package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vk/gridsched/internal/ctxlog"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// ValidateRegistry checks that every handler's function, input type and
// input constructor agree with each other, and that every input field is
// decodable from an `arguments` block.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	names := r.Names()
	for _, name := range names {
		handler := r.HandlerRegistry[name]
		errs = append(errs, validateHandler(name, handler)...)
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "handlers", names)
	return nil
}

func validateHandler(name string, h *RegisteredHandler) []string {
	if h == nil || h.Fn == nil {
		return []string{fmt.Sprintf("handler '%s': no function registered", name)}
	}
	if h.InputType == nil || h.InputType.Kind() != reflect.Struct {
		return []string{fmt.Sprintf("handler '%s': input type must be a struct", name)}
	}

	var errs []string
	fnType := reflect.TypeOf(h.Fn)
	wantIn := reflect.PointerTo(h.InputType)
	if fnType.Kind() != reflect.Func ||
		fnType.NumIn() != 2 || fnType.In(0) != contextType || fnType.In(1) != wantIn ||
		fnType.NumOut() != 1 || fnType.Out(0) != errorType {
		errs = append(errs, fmt.Sprintf("handler '%s': function must be func(context.Context, %s) error, got %s", name, wantIn, fnType))
	}

	if h.NewInput == nil {
		errs = append(errs, fmt.Sprintf("handler '%s': NewInput is not set", name))
	} else if got := reflect.TypeOf(h.NewInput()); got != wantIn {
		errs = append(errs, fmt.Sprintf("handler '%s': NewInput returns %v, expected %s", name, got, wantIn))
	}

	for i := 0; i < h.InputType.NumField(); i++ {
		field := h.InputType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("hcl")
		if tag == "" {
			errs = append(errs, fmt.Sprintf("handler '%s': input field '%s' has no hcl tag", name, field.Name))
		}
	}
	return errs
}
