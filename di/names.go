package di

// ComponentNames lists the keys bootstrap registers components under.
// Applications embed it in their own names struct.
type ComponentNames struct {
	Config string // *config.Resolved, the snapshot taken at startup
	Store  string // *config.Store, the swappable active configuration
	Logger string // *logger.Logger
}

// Names contains the component keys used by bootstrap.
var Names = ComponentNames{
	Config: "config",
	Store:  "config_store",
	Logger: "logger",
}
