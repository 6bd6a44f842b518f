// Package callable describes things that can be invoked with named arguments:
// plain functions, struct "constructors" and hand-declared commands. It is the
// signature reader and invoker used by package tapify.
//
// The package offers three Callable implementations:
//
// 1. Struct constructors, created with Struct or NewStruct:
//   - Every exported field is a parameter, in declaration order
//   - Field names are converted from CamelCase to snake_case
//   - Supported struct tags:
//   - tapify: Optional. "name" overrides the parameter name, "-" skips the
//     field and ",extra" marks a map[string]string (or map[string]any) field
//     as the catch-all keyword parameter
//   - default: Optional. The declared default, converted to the field type
//   - Calling allocates a new *T, assigns the fields and runs Init(ctx) when
//     *T implements Initializer
//
// 2. Functions, created with Func:
//   - Go does not keep parameter names at run time, so they are supplied with
//     Names. A name starting with "**" marks the catch-all keyword parameter
//   - A leading context.Context parameter receives the call context
//   - Supported results are (), (T), (error) and (T, error)
//
// 3. Hand-declared commands (Command), whose parameters may be left untyped.
//
// Example usage:
//
//	type Server struct {
//	  Addr    string        `default:":8080"`
//	  Timeout time.Duration `default:"5s"`
//	  Labels  map[string]string `tapify:",extra"`
//	}
//
//	// Doc is picked up as the help text of the generated command.
//	func (Server) Doc() string {
//	  return `Start the server.
//
//	  :param addr: Listen address
//	  :param timeout: Request timeout`
//	}
//
//	srv := callable.Struct[Server]()
//
//	greet := callable.Func("greet", func(name string, count int) string {
//	  return strings.Repeat("hello "+name+"\n", count)
//	}, callable.Names("name", "count"), callable.Default("count", 3))
//
// Custom parameter types implement Unmarshaler to parse themselves from a
// command-line token, and Marshaler to advertise their ValueType.
package callable
