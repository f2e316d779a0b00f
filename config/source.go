package config

// Source identifies where a configuration layer came from.
// Values are ordered by ascending precedence.
type Source int

const (
	SourceUnknown Source = iota
	SourceStaticFile
	SourceDotEnv
	SourceProcessEnv
	SourceCLI
)

var sourceNames = map[Source]string{
	SourceUnknown:    "unknown",
	SourceStaticFile: "static_file",
	SourceDotEnv:     "dotenv",
	SourceProcessEnv: "process_env",
	SourceCLI:        "cli",
}

// String returns the source name used in logs and output.
func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return sourceNames[SourceUnknown]
}

// Sources returns the known sources from lowest to highest precedence.
func Sources() []Source {
	return []Source{SourceStaticFile, SourceDotEnv, SourceProcessEnv, SourceCLI}
}
