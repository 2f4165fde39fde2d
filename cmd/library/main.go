package main

import "github.com/Astemirdum/library-ledger/cmd/library/commands"

// @title Library API
// @version 1.0
// @description Book catalog and borrowings ledger.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	commands.Execute()
}
