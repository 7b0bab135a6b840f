package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/yashagw/craneopt/internal/config"
	"github.com/yashagw/craneopt/internal/server"
)

type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
}

func NewClient(host, port string) (*Client, error) {
	address := net.JoinHostPort(host, port)
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to server")
	}

	return &Client{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) Send(request string) (*server.Response, error) {
	if _, err := c.writer.WriteString(request + "\n"); err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}
	if err := c.writer.Flush(); err != nil {
		return nil, errors.Wrap(err, "failed to flush request")
	}

	responseLine, err := c.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("server closed connection")
		}
		return nil, errors.Wrap(err, "failed to read response")
	}

	var response server.Response
	if err := json.Unmarshal([]byte(strings.TrimSpace(responseLine)), &response); err != nil {
		return nil, errors.Wrap(err, "failed to parse response")
	}

	return &response, nil
}

func printResponse(w io.Writer, response *server.Response) {
	switch response.Type {
	case "error":
		fmt.Fprintf(w, "❌ Error: %s\n\n", response.Error)
	case "relations":
		for _, name := range response.Relations {
			fmt.Fprintln(w, name)
		}
		fmt.Fprintf(w, "\n(%d relation(s))\n\n", len(response.Relations))
	case "explain", "optimise":
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Operator", "Tuples"})
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		for _, node := range response.Nodes {
			table.Append([]string{
				strings.Repeat("  ", node.Depth) + node.Operator,
				strconv.Itoa(node.Tuples),
			})
		}
		table.Render()

		if response.Type == "optimise" {
			fmt.Fprintf(w, "cost %d (input plan %d, %d candidate(s))\n\n",
				response.Cost, response.OriginalCost, response.Candidates)
		} else {
			fmt.Fprintf(w, "cost %d\n\n", response.Cost)
		}
	}
}

// processRequest sends a request and prints the response.
// Returns true if the client should exit (QUIT/EXIT command).
func processRequest(request string, client *Client) bool {
	request = strings.TrimSpace(request)
	if request == "" {
		return false
	}

	upper := strings.ToUpper(request)
	if upper == "QUIT" || upper == "EXIT" {
		fmt.Println("Goodbye!")
		return true
	}

	response, err := client.Send(request)
	if err != nil {
		fmt.Printf("❌ Error: %v\n\n", err)
		return false
	}

	printResponse(os.Stdout, response)
	return false
}

func main() {
	host := os.Getenv("CRANEOPT_HOST")
	if host == "" {
		host = config.DefaultHost
	}

	port := os.Getenv("CRANEOPT_PORT")
	if port == "" {
		port = config.DefaultPort
	}

	client, err := NewClient(host, port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to server: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Println("🐦 craneopt client")
	fmt.Printf("Connected to %s:%s\n", host, port)
	fmt.Println("Enter EXPLAIN <query>; or OPTIMISE <query>; RELATIONS; lists the catalogue, QUIT exits")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	var requestBuilder strings.Builder

	for {
		if requestBuilder.Len() == 0 {
			fmt.Print("craneopt> ")
		} else {
			fmt.Print("       -> ")
		}

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		if requestBuilder.Len() == 0 && (upper == "QUIT" || upper == "EXIT") {
			processRequest(line, client)
			break
		}

		if strings.HasSuffix(line, ";") {
			if requestBuilder.Len() > 0 {
				requestBuilder.WriteString(" ")
			}
			requestBuilder.WriteString(strings.TrimSuffix(line, ";"))
			request := requestBuilder.String()
			requestBuilder.Reset()
			if processRequest(request, client) {
				break
			}
		} else {
			if requestBuilder.Len() > 0 {
				requestBuilder.WriteString(" ")
			}
			requestBuilder.WriteString(line)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}
}
