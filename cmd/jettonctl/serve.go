package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/branched-services/go-jetton/codecrpc"
)

var listenFlag = &cli.StringFlag{
	Name:    "addr",
	Usage:   "Listen address of the codec service",
	Value:   "127.0.0.1:9090",
	EnvVars: []string{"JETTON_RPC_ADDR"},
}

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Run the metadata codec gRPC service",
	Flags:  []cli.Flag{listenFlag},
	Action: serve,
}

func serve(ctx *cli.Context) error {
	lis, err := net.Listen("tcp", ctx.String(listenFlag.Name))
	if err != nil {
		return err
	}
	srv := codecrpc.NewGRPCServer(newCodec(ctx))

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)
	go func() {
		select {
		case <-sigc:
			log.Info("Got interrupt, shutting down...")
			srv.GracefulStop()
		case <-ctx.Done():
			srv.GracefulStop()
		}
	}()

	log.Info("Codec service started", "addr", lis.Addr())
	return srv.Serve(lis)
}
