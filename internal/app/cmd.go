package app

// Command はofficehubのサブコマンド。
type Command string

const (
	// CommandServe はDBに接続してドメインサービスを構築し、/healthと/metricsを公開する。
	CommandServe Command = "serve"
	// CommandMigrate は埋め込みのスキーマ定義（accounts、profiles、hangouts、
	// groups、brownbags、secret_santas）を最新まで適用して終了する。
	CommandMigrate Command = "migrate"
	// CommandHealthcheck は起動中のserveの/healthを叩き、200以外なら失敗する。
	// 設定の読み込みやDB接続は行わない。
	CommandHealthcheck Command = "healthcheck"
)

// commands はサブコマンド名の対応表。
var commands = map[string]Command{
	string(CommandServe):       CommandServe,
	string(CommandMigrate):     CommandMigrate,
	string(CommandHealthcheck): CommandHealthcheck,
}

// ParseCommand はos.Args[1:]の先頭からサブコマンドを決める。
// 引数なし、または未知の名前の場合はserveとして起動する。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}
	if cmd, ok := commands[args[0]]; ok {
		return cmd
	}
	return CommandServe
}
