package main

import "go.gazette.dev/streammsg/cmd/streamctl/streamctlcmd"

func main() { streamctlcmd.Execute() }
