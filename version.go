package tzlabel

// Version is the release of the tzlabel module.
const Version = "0.1.0"

// BuildVersion carries build information as JSON and is set via -ldflags at build time.
var BuildVersion = "{}"
