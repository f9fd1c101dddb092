package osutil

const (
	Windows = "windows"
	Darwin  = "darwin"
)
