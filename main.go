package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/audimeta/geodash/axiom"
	"github.com/audimeta/geodash/geolib"
	"github.com/audimeta/geodash/resolvers"
)

const (
	version   = "0.1.0"
	userAgent = "geodash/" + version

	geocodeTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

var (
	app = kingpin.New(
		"geodash",
		"Dashboard backend: per-IP request counts from Axiom, geocoded for a map frontend.")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("GEODASH_DEBUG").
		Bool()
	listen = app.Flag("listen", "Host:port to listen on.").
		Envar("GEODASH_LISTEN").
		Default("127.0.0.1:8050").
		String()
	axiomToken = app.Flag("axiom-token", "API token for the Axiom query API.").
			Envar("AXIOM_API_TOKEN").
			Default("").
			String()
	axiomDataset = app.Flag("axiom-dataset", "Axiom dataset to query.").
			Envar("AXIOM_DATASET").
			Default("audimeta").
			String()
	maxmindDBPath = app.Flag("maxmind-db-path", "Path to the GeoLite2 City database.").
			Envar("MAXMIND_DB_PATH").
			Default("./data/GeoLite2-City.mmdb").
			String()
	geocodePacing = app.Flag("geocode-pacing", "Courtesy delay between remote geolocation lookups.").
			Envar("GEODASH_GEOCODE_PACING").
			Default("100ms").
			Duration()
	frontendDir = app.Flag("frontend-dir", "Directory with the frontend shell.").
			Envar("GEODASH_FRONTEND_DIR").
			Default("./frontend").
			String()
	mapsAPIKey = app.Flag("maps-api-key", "Google Maps API key injected into index.html.").
			Envar("GOOGLE_MAPS_API_KEY").
			Default("").
			String()
)

func init() {
	app.Version(version)
}

func main() {
	godotenv.Load() // nolint: errcheck

	kingpin.MustParse(app.Parse(os.Args[1:]))

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	resolver, err := chooseResolver(afero.NewOsFs())
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot initialize a geolocation resolver")
	}

	analytics := axiom.NewClient(
		geolib.NewHTTPClient(&http.Client{Timeout: axiom.DefaultTimeout}, userAgent, 0, 1),
		*axiomToken,
		*axiomDataset)

	dash := geolib.NewDashboard(analytics, resolver, newLogger())

	srv := &http.Server{
		Addr: *listen,
		Handler: geolib.NewHTTPHandler(dash, geolib.FrontendConfig{
			Fs:         afero.NewOsFs(),
			Directory:  *frontendDir,
			MapsAPIKey: *mapsAPIKey,
		}),
	}

	go func() {
		log.Info().Str("listen", *listen).Str("dataset", *axiomDataset).Msg("Server is starting")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Cannot run a server")
		}
	}()

	waitForShutdown(srv)
}

// chooseResolver picks the geolocation strategy once for the process
// lifetime: the local database when its file is present, the paced
// ipwho.is fallback otherwise.
func chooseResolver(fs afero.Fs) (geolib.Resolver, error) {
	exists, err := afero.Exists(fs, *maxmindDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot check the database path: %w", err)
	}

	if !exists {
		log.Warn().
			Str("path", *maxmindDBPath).
			Dur("pacing", *geocodePacing).
			Msg("MaxMind database is missing, falling back to ipwho.is")

		client := geolib.NewHTTPClient(&http.Client{Timeout: geocodeTimeout},
			userAgent, *geocodePacing, 1)

		return resolvers.NewIPWhois(client), nil
	}

	resolver, err := resolvers.NewMaxmind(fs, *maxmindDBPath)
	if err != nil {
		return nil, err
	}

	log.Info().Str("path", *maxmindDBPath).Msg("MaxMind database was loaded")

	return resolver, nil
}

func waitForShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Server is shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown a server gracefully")
	}
}
