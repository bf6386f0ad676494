package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	pb "github.com/vulpemventures/coinpurse/api-spec/coinpurse/v1"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

var (
	maxMsgRecvSize = grpc.MaxCallRecvMsgSize(1 * 1024 * 1024 * 200)
	colorRed       = string("\033[31m")
	colorReset     = string("\033[0m")
)

func getClient() (*pb.Client, func(), error) {
	conn, err := getClientConn()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() { conn.Close() }
	return pb.NewClient(conn), cleanup, nil
}

func getClientConn() (*grpc.ClientConn, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	address, ok := state["rpcserver"]
	if !ok || address == "" {
		return nil, fmt.Errorf("set rpcserver with `config set rpcserver`")
	}

	opts := []grpc.DialOption{grpc.WithDefaultCallOptions(maxMsgRecvSize)}

	noTLS, _ := strconv.ParseBool(state["no_tls"])
	if noTLS {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	} else {
		certPath := state["tls_cert_path"]
		if certPath == "" {
			return nil, fmt.Errorf(
				"missing TLS certificate filepath. Try " +
					"'coinpurse config set tls_cert_path path/to/tls/certificate'",
			)
		}

		tlsCreds, err := credentials.NewClientTLSFromFile(certPath, "")
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS certificate: %s", err)
		}
		opts = append(opts, grpc.WithTransportCredentials(tlsCreds))
	}

	conn, err := grpc.Dial(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to coinpurse daemon: %v", err)
	}
	return conn, nil
}

func getState() (map[string]string, error) {
	file, err := os.ReadFile(statePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := writeState(initialState); err != nil {
			return nil, err
		}
		return copyState(initialState), nil
	}

	data := map[string]string{}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("invalid state file %s: %w", statePath, err)
	}
	return data, nil
}

func setState(partialState map[string]string) error {
	state, err := getState()
	if err != nil {
		return err
	}

	for key, value := range partialState {
		state[key] = value
	}
	return writeState(state)
}

func writeState(state map[string]string) error {
	dir := filepath.Dir(statePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %v", err)
		}
	}

	buf, _ := json.MarshalIndent(state, "", "  ")
	if err := os.WriteFile(statePath, buf, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}
	return nil
}

func copyState(state map[string]string) map[string]string {
	c := make(map[string]string, len(state))
	for k, v := range state {
		c[k] = v
	}
	return c
}

func cleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		u, err := user.Current()
		if err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// parseCoins parses a comma separated list of denomination:quantity pairs,
// like 100:2,50:3.
func parseCoins(str string) ([]domain.Coin, error) {
	if strings.TrimSpace(str) == "" {
		return []domain.Coin{}, nil
	}

	pairs := strings.Split(str, ",")
	coins := make([]domain.Coin, 0, len(pairs))
	for _, pair := range pairs {
		parts := strings.Split(strings.TrimSpace(pair), ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf(
				"invalid coin %q, must be in the form denomination:quantity", pair,
			)
		}
		denomination, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid denomination %q", parts[0])
		}
		quantity, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q", parts[1])
		}
		coins = append(coins, domain.Coin{
			Denomination: denomination,
			Quantity:     quantity,
		})
	}
	return coins, nil
}

func coinsToRequest(coins []domain.Coin) []interface{} {
	list := make([]interface{}, 0, len(coins))
	for _, c := range coins {
		list = append(list, map[string]interface{}{
			"denomination": c.Denomination,
			"quantity":     c.Quantity,
		})
	}
	return list
}

func jsonResponse(msg proto.Message) (string, error) {
	buf, err := protojson.MarshalOptions{Multiline: true, EmitUnpopulated: true}.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal proto message: %s", err)
	}
	return string(buf), nil
}

func printResponse(msg proto.Message) error {
	res, err := jsonResponse(msg)
	if err != nil {
		return err
	}
	fmt.Println(res)
	return nil
}

func printErr(err error) {
	s := status.Convert(err)
	msg := fmt.Sprintf("%s%s%s", colorRed, capitalize(s.Message()), colorReset)
	fmt.Fprintln(os.Stderr, msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[0:1]) + s[1:]
}

func formatVersion() string {
	return fmt.Sprintf(
		"\nVersion: %s\nCommit: %s\nDate: %s", version, commit, date,
	)
}
