package main

func main() {
	Execute(RootCmd())
}
