package cyclex

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// EnvShaderPaths is the environment variable holding the colon-delimited list of
// directories searched for compiled shader binaries.
const EnvShaderPaths = "OSL_SHADER_PATHS"

// DefaultShaderInfoCommand is the command-line introspection tool invoked per shader
// binary to extract its parameter interface.
const DefaultShaderInfoCommand = "oslinfo"

// shaderParamTypes is the set of primitive type names recognized as input parameter
// declarations in introspection output.
var shaderParamTypes = map[string]bool{
	"float":  true,
	"int":    true,
	"string": true,
	"color":  true,
	"point":  true,
	"vector": true,
	"normal": true,
	"matrix": true,
}

// ShaderParameter is one declared input or output on a compiled shader binary.
type ShaderParameter struct {
	Name   string
	Type   string
	Output bool
}

// ResolutionError is returned when a shader name can't be found anywhere on the shader
// search path. The export can't proceed past it, since the shader's parameter interface
// only exists in the binary.
type ResolutionError struct {
	Shader     string
	SearchPath []string
}

func (err *ResolutionError) Error() string {
	return fmt.Sprintf("cyclex: shader %q not found on search path [%s]", err.Shader, strings.Join(err.SearchPath, ":"))
}

// ShaderResolver locates compiled shader binaries by name on a search path and
// introspects them for their declared parameter interfaces. Introspection results are
// cached per binary path for the resolver's lifetime - shader binaries are immutable for
// a render session, so there is no invalidation. The cache is mutex-guarded and
// write-once, so a resolver shared between parallel exports stays consistent.
type ShaderResolver struct {
	searchPath  []string
	infoCommand string

	// runner invokes the introspection tool and returns its stdout; it is swappable
	// for tests.
	runner func(command string, args ...string) (string, error)

	mu    sync.Mutex
	cache map[string][]ShaderParameter
}

// NewShaderResolver returns a ShaderResolver searching the colon-delimited list of
// directories given. An empty search path falls back to $OSL_SHADER_PATHS.
func NewShaderResolver(searchPath string) *ShaderResolver {
	if searchPath == "" {
		searchPath = os.Getenv(EnvShaderPaths)
	}
	resolver := &ShaderResolver{
		infoCommand: DefaultShaderInfoCommand,
		runner:      runCommand,
		cache:       map[string][]ShaderParameter{},
	}
	for _, dir := range strings.Split(searchPath, ":") {
		if dir != "" {
			resolver.searchPath = append(resolver.searchPath, dir)
		}
	}
	return resolver
}

// SearchPath returns the directories the resolver searches, in order.
func (resolver *ShaderResolver) SearchPath() []string {
	return append([]string{}, resolver.searchPath...)
}

// FindShader locates the compiled binary for the shader name given, returning the path
// of the first match on the search path. A name without an extension gets ".oso"
// appended. If no directory on the search path has the binary, FindShader returns a
// *ResolutionError.
func (resolver *ShaderResolver) FindShader(name string) (string, error) {

	fileName := name
	if filepath.Ext(fileName) == "" {
		fileName += ".oso"
	}

	for _, dir := range resolver.searchPath {
		candidate := filepath.Join(dir, fileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", &ResolutionError{Shader: name, SearchPath: resolver.SearchPath()}

}

// Describe returns the declared parameter interface of the compiled shader binary at the
// path given, invoking the introspection tool on first use and answering from the cache
// afterwards.
func (resolver *ShaderResolver) Describe(binaryPath string) ([]ShaderParameter, error) {

	resolver.mu.Lock()
	defer resolver.mu.Unlock()

	if params, ok := resolver.cache[binaryPath]; ok {
		return params, nil
	}

	output, err := resolver.runner(resolver.infoCommand, binaryPath)
	if err != nil {
		return nil, fmt.Errorf("cyclex: introspecting shader %q: %w", binaryPath, err)
	}

	params := parseShaderInfo(output)
	resolver.cache[binaryPath] = params

	return params, nil

}

// parseShaderInfo classifies the introspection tool's line-oriented output by leading
// token: "surface" and "output" lines produce output declarations, lines starting with
// one of the primitive type names produce input declarations, and anything else is
// ignored (permissive parsing; a malformed line just means a thinner declared
// interface).
func parseShaderInfo(output string) []ShaderParameter {

	params := []ShaderParameter{}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {

		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		switch {
		case fields[0] == "surface":
			params = append(params, ShaderParameter{
				Name:   strings.Trim(fields[1], `"`),
				Type:   "surface",
				Output: true,
			})
		case fields[0] == "output" && len(fields) >= 3:
			params = append(params, ShaderParameter{
				Name:   strings.Trim(fields[2], `"`),
				Type:   fields[1],
				Output: true,
			})
		case shaderParamTypes[fields[0]]:
			params = append(params, ShaderParameter{
				Name: strings.Trim(fields[1], `"`),
				Type: fields[0],
			})
		}

	}

	return params

}

// runCommand is the default runner: it invokes the command and returns its stdout.
func runCommand(command string, args ...string) (string, error) {
	out, err := exec.Command(command, args...).Output()
	return string(out), err
}
