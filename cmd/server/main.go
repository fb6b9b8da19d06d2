package main

import "github.com/Manav-Nocode/campus-app/internal/server"

func main() {
	s := server.New()
	s.RegisterRoutes()
	s.Start(s.Cfg.HTTPAddr)
}
