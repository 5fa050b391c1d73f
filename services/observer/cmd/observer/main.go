package main

import "github.com/muhammadchandra19/orderbook-observer/services/observer/app/cli"

func main() {
	cli.Execute()
}
