package main

import (
	"flag"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"
)

// 说明：
// 网关当前是一个最小可运行的 HTTP 入口：
// - /healthz: 网关自身健康检查
// - /v1/vehicles*: 反向代理到 fleet-service
// - /v1/operators*, /v1/login: 反向代理到 operator-service
// 后续可换成 Kong/Nginx 或接入 Consul 做动态上游解析。

var (
	listenAddr   = flag.String("listen", ":8080", "HTTP listen address")
	fleetAddr    = flag.String("fleet", "http://127.0.0.1:8081", "fleet-service base URL")
	operatorAddr = flag.String("operator", "http://127.0.0.1:8082", "operator-service base URL")
)

func newProxy(base string) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	return httputil.NewSingleHostReverseProxy(target), nil
}

func main() {
	flag.Parse()

	fleetProxy, err := newProxy(*fleetAddr)
	if err != nil {
		panic(err)
	}
	operatorProxy, err := newProxy(*operatorAddr)
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/v1/vehicles"):
			fleetProxy.ServeHTTP(w, r)
		case strings.HasPrefix(r.URL.Path, "/v1/operators"), r.URL.Path == "/v1/login":
			operatorProxy.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})

	srv := &http.Server{
		Addr:              *listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	fmt.Printf("api-gateway listening on %s\n", *listenAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		panic(err)
	}
}
