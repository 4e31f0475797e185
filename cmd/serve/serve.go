package serve

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	"github.com/readmelens/readmelens/config"
	"github.com/readmelens/readmelens/pkg/cache"
	ghclient "github.com/readmelens/readmelens/pkg/github"
	"github.com/readmelens/readmelens/pkg/logger"
	readmehttp "github.com/readmelens/readmelens/pkg/readme/http"
	readmeservice "github.com/readmelens/readmelens/pkg/readme/service"
	"github.com/readmelens/readmelens/pkg/render"
)

var (
	port int
	dev  bool
	// HTTP TLS configuration variables
	tlsCertFile string
	tlsKeyFile  string
)

// spaHandler implements the http.Handler interface for serving the
// embedded browser form
type spaHandler struct {
	indexPath  string
	fsys       embed.FS
	staticPath string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Get the absolute path to prevent directory traversal
	path := filepath.Join(h.staticPath, strings.TrimPrefix(r.URL.Path, "/"))

	// Try to serve the requested file
	content, err := h.fsys.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, serve index.html
		content, err = h.fsys.ReadFile(filepath.Join(h.staticPath, h.indexPath))
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	// Set content type based on file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".html":
		w.Header().Set("Content-Type", "text/html")
	case ".css":
		w.Header().Set("Content-Type", "text/css")
	case ".js":
		w.Header().Set("Content-Type", "application/javascript")
	case ".json":
		w.Header().Set("Content-Type", "application/json")
	case ".svg":
		w.Header().Set("Content-Type", "image/svg+xml")
	case ".ico":
		w.Header().Set("Content-Type", "image/x-icon")
	}

	w.Write(content)
}

// defaultPort reads the PORT environment variable, falling back to 3000.
func defaultPort() int {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			return p
		}
	}
	return 3000
}

// setupServer configures and returns the HTTP server
func setupServer(logger *logger.Logger, views embed.FS) *chi.Mux {
	// Initialize services
	githubClient := ghclient.NewClient(os.Getenv("GITHUB_TOKEN"))
	readmeCache := cache.NewDefault()
	pipeline := render.NewPipeline()
	readmeService := readmeservice.NewReadmeService(githubClient, readmeCache, pipeline, logger)

	// Initialize handlers
	readmeHandler := readmehttp.NewHandler(readmeService, logger)

	// Setup router
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Add CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // Allow all origins
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		readmeHandler.RegisterRoutes(r)
	})

	// Serve the browser form in production mode
	if !dev {
		spa := spaHandler{
			staticPath: "web/dist",
			indexPath:  "index.html",
			fsys:       views,
		}
		r.Handle("/*", spa)
	}

	return r
}

// Command returns the serve command
func Command(configCMD config.ConfigCMD, logger *logger.Logger) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the HTTP API server on the specified port.
For example:
  readmelens serve --port 3000`,
		Run: func(cmd *cobra.Command, args []string) {
			if os.Getenv("GITHUB_TOKEN") == "" {
				logger.Warn("GITHUB_TOKEN not set, using unauthenticated GitHub API rate limits")
			}
			if dev {
				fmt.Println("Running in development mode")
			}

			// Setup and start HTTP server
			router := setupServer(logger, configCMD.Views)

			httpServer := &http.Server{
				Addr:    fmt.Sprintf(":%d", port),
				Handler: router,
			}

			isTLS := tlsCertFile != "" && tlsKeyFile != ""
			// Check if TLS cert and key files exist
			if isTLS {
				if _, err := os.Stat(tlsCertFile); os.IsNotExist(err) {
					log.Fatalf("TLS certificate file not found: %s", tlsCertFile)
				}
				if _, err := os.Stat(tlsKeyFile); os.IsNotExist(err) {
					log.Fatalf("TLS key file not found: %s", tlsKeyFile)
				}
			}
			var err error
			if isTLS {
				logger.Infof("HTTPS server listening on :%d", port)
				err = httpServer.ListenAndServeTLS(tlsCertFile, tlsKeyFile)
			} else {
				logger.Infof("HTTP server listening on :%d", port)
				err = httpServer.ListenAndServe()
			}

			if err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start HTTP server: %v", err)
			}
		},
	}

	// Add port flags
	serveCmd.Flags().IntVarP(&port, "port", "p", defaultPort(), "Port to run the HTTP server on (defaults to PORT env)")

	// Add HTTP TLS configuration flags
	serveCmd.Flags().StringVar(&tlsCertFile, "tls-cert", "", "Path to TLS certificate file for HTTP server")
	serveCmd.Flags().StringVar(&tlsKeyFile, "tls-key", "", "Path to TLS key file for HTTP server")

	// Add development mode flag
	serveCmd.Flags().BoolVar(&dev, "dev", false, "Run in development mode")

	return serveCmd
}
