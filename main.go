/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
// @title           Envgen Gin API
// @version         1.0
// @description     .env 模板管理 API 服务: 定义模板、管理客户端、生成和批量导出 .env 文件
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
package main

import "github.com/mautops/envgen-gin/cmd"

func main() {
	cmd.Execute()
}
