package app

import (
	"github.com/vk/busboot/internal/routing"
	"github.com/vk/busboot/modules/sales"
)

// CoreModules is the list of route modules compiled into the busboot binary.
var CoreModules = []routing.Module{
	&sales.Module{},
}
