package fluid

// Version information for the fluid-let runtime.
const (
	// Version is the current version of the fluid variable runtime.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about the fluid variable engine.
type Info struct {
	// Version is the runtime version string.
	Version string

	// GoroutineLocal reports that bindings are scoped per goroutine.
	// Always true; present so embedders can assert the isolation model.
	GoroutineLocal bool
}

// GetInfo returns information about the fluid variable runtime.
//
// Example:
//
//	info := fluid.GetInfo()
//	fmt.Printf("fluid-let %s\n", info.Version)
func GetInfo() Info {
	return Info{
		Version:        Version,
		GoroutineLocal: true,
	}
}
