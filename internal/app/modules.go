package app

import (
	"github.com/vk/gridsched/internal/registry"
	"github.com/vk/gridsched/modules/env_vars"
	"github.com/vk/gridsched/modules/print"
	"github.com/vk/gridsched/modules/sleep"
)

// coreModules is the definitive list of all modules that are compiled into
// the gridsched binary.
var coreModules = []registry.Module{
	&env_vars.Module{},
	&print.Module{},
	&sleep.Module{},
}
