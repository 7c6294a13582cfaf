package resources

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/samber/lo"

	"github.com/reoring/modelshim/model"
)

// Resource is a registered resource model.
type Resource struct {
	Name string
	Type reflect.Type
	// New returns a fresh, empty instance.
	New func() model.Model
}

var registry = map[string]Resource{}

// Register adds a resource under name. It panics on duplicates and on
// non-model types.
func Register[T any, PT interface {
	*T
	model.Model
}](name string) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("resources: %q registered twice", name))
	}
	t := model.TypeOf[T]()
	if !model.IsModelType(t) {
		panic(fmt.Sprintf("resources: %v is not a model type", t))
	}
	registry[name] = Resource{
		Name: name,
		Type: t,
		New:  func() model.Model { return PT(new(T)) },
	}
}

// Lookup returns the resource registered under name.
func Lookup(name string) (Resource, error) {
	r, ok := registry[name]
	if !ok {
		return Resource{}, fmt.Errorf("unknown resource %q (known: %v)", name, Names())
	}
	return r, nil
}

// Names lists the registered resource names, sorted.
func Names() []string {
	out := lo.Keys(registry)
	sort.Strings(out)
	return out
}

func init() {
	Register[Model]("model")
	Register[FileObject]("file")
	Register[Page[Model]]("model-list")
	Register[Page[FileObject]]("file-list")
}
