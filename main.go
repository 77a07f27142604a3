package main

import (
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/startup"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/startup/config"
)

func main() {
	cfg := config.NewConfig()
	server := startup.NewServer(cfg)
	server.Start()
}
