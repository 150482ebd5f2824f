// Package easypybind scaffolds pybind11 native-extension modules.
package easypybind

// Version is the easy-pybind release version.
const Version = "0.1.0"
