package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"controlling_thermostat/internal/actuator"
	"controlling_thermostat/internal/engine"
	"controlling_thermostat/internal/handlers"
	"controlling_thermostat/internal/logger"
	"controlling_thermostat/internal/repository"
	"controlling_thermostat/internal/repository/db"
	"controlling_thermostat/internal/sensor"
	"controlling_thermostat/internal/server"
	"controlling_thermostat/internal/service"
	"controlling_thermostat/internal/telemetry"

	"github.com/spf13/viper"
)

const defaultDriverTick = 1 * time.Second

func main() {
	// load config.yml first so the log level is configurable
	if err := loadConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "error reading config:", err)
		os.Exit(1)
	}

	// init logger
	level := viper.GetString("log.level")
	if level == "" {
		level = logger.InfoLevel
	}
	log := logger.Get(level)

	// open DB
	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// actuator boundary: relays or in-memory simulation
	iface, closeActuator, err := buildActuator(log)
	if err != nil {
		log.Fatalw("failed to init actuator backend", "err", err)
	}
	defer closeActuator()

	// telemetry is optional; absent broker means no-op publisher
	pub := buildTelemetry(log)
	defer func() { _ = pub.Close() }()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(service.Deps{
		Repos:      repos,
		Thermostat: engine.New(iface),
		Sensor:     buildSensor(iface),
		Telemetry:  pub,
		Log:        log,
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the measurement loop
	go services.Driver.Run(ctx, driverTick())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "thermostat.db")
		dbPath = "thermostat.db"
	}
	return db.Open(dbPath)
}

// buildActuator selects the hardware or simulated backend from config.
func buildActuator(log *logger.Logger) (engine.Interface, func(), error) {
	backend := viper.GetString("actuator.backend")
	switch backend {
	case "gpio":
		pins := actuator.RelayPins{
			Heat: viper.GetInt("actuator.gpio.heat_pin"),
			Cool: viper.GetInt("actuator.gpio.cool_pin"),
			Fan:  viper.GetInt("actuator.gpio.fan_pin"),
		}
		chip := viper.GetString("actuator.gpio.chip")
		relay, err := actuator.NewRelay(chip, pins)
		if err != nil {
			return nil, nil, err
		}
		log.Infow("actuator backend ready", "backend", "gpio", "chip", chip)
		return relay, func() { _ = relay.Close() }, nil
	case "", "sim":
		log.Infow("actuator backend ready", "backend", "sim")
		return actuator.NewSim(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown actuator backend %q", backend)
	}
}

// buildSensor returns the configured measurement source. Only the simulated
// sensor exists today; it observes the commanded actuator states to model a
// plausible room.
func buildSensor(iface engine.Interface) sensor.Sensor {
	ambient := viper.GetFloat64("sensor.sim.ambient_c")
	if sim, ok := iface.(*actuator.Sim); ok {
		return sensor.NewSim(sim, ambient)
	}
	return sensor.NewSim(commandedStates{iface}, ambient)
}

// commandedStates adapts any actuator boundary to the simulated sensor's
// view. Read errors degrade to "off".
type commandedStates struct {
	iface engine.Interface
}

func (c commandedStates) States() (heat, cool, fan bool) {
	heat, _ = c.iface.CallingFor(engine.Heat)
	cool, _ = c.iface.CallingFor(engine.Cool)
	fan, _ = c.iface.CallingFor(engine.Fan)
	return heat, cool, fan
}

// buildTelemetry connects to MQTT when a broker is configured.
func buildTelemetry(log *logger.Logger) telemetry.Publisher {
	broker := viper.GetString("mqtt.broker")
	if broker == "" {
		return telemetry.Nop{}
	}
	pub, err := telemetry.NewMQTT(
		broker,
		viper.GetString("mqtt.client_id"),
		viper.GetString("mqtt.topic_prefix"),
	)
	if err != nil {
		log.Warnw("mqtt unavailable, telemetry disabled", "broker", broker, "err", err)
		return telemetry.Nop{}
	}
	log.Infow("telemetry connected", "broker", broker)
	return pub
}

func driverTick() time.Duration {
	if d := viper.GetDuration("driver.tick"); d > 0 {
		return d
	}
	return defaultDriverTick
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
