package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	core "github.com/epam/mintgate/core"
	"github.com/epam/mintgate/marketserver/config"
	"github.com/epam/mintgate/marketserver/controllers"
	"github.com/epam/mintgate/marketserver/routes"
	"github.com/epam/mintgate/marketserver/services"
	pkgconfig "github.com/epam/mintgate/pkg/config"
)

func main() {
	if err := config.Load(); err != nil {
		logrus.Fatal(err)
	}
	cfg, err := pkgconfig.Load(config.AppConfig.Env)
	if err != nil {
		logrus.Warnf("config files unavailable, using environment: %v", err)
		cfg = pkgconfig.LoadFromEnv()
	}

	store, err := core.OpenSnapshotStore(config.AppConfig.SnapshotPath)
	if err != nil {
		logrus.Fatal(err)
	}
	svc, err := services.NewService(store, cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	ctrl := controllers.NewNftController(svc)

	r := mux.NewRouter()
	routes.Register(r, ctrl)

	logrus.Infof("market server listening on %s", config.AppConfig.Port)
	if err := http.ListenAndServe(":"+config.AppConfig.Port, r); err != nil {
		logrus.Fatal(err)
	}
}
