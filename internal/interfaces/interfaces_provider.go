// Package interfaces wires the interface layer.
package interfaces

import (
	"github.com/google/wire"

	"call-center-server/internal/interfaces/httpserver"
	"call-center-server/internal/interfaces/httpserver/handlers"
	"call-center-server/internal/interfaces/httpserver/routes"
)

// InterfacesProvider provides all interface dependencies.
var InterfacesProvider = wire.NewSet(
	handlers.HandlerProvider,
	routes.RouteProvider,
	httpserver.New,
)
