package agent

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/snmp-reporter/internal/pipeline"
	"github.com/snmp-reporter/pkg/util"
)

// printSummary 控制台输出运行结果，文字与现有运维习惯保持一致
func printSummary(w io.Writer, out pipeline.Outcome) {
	switch {
	case out.Err != nil:
		fmt.Fprintln(w, util.Colorize("ColorRed", "Erro: "+out.Err.Error()))
	case out.Submitted:
		fmt.Fprintf(w, "Status code: %d\n", out.Report.StatusCode)
		data, err := json.Marshal(out.Batch)
		if err != nil {
			data = []byte(err.Error())
		}
		fmt.Fprintf(w, "Response text: %s\n", data)
		fmt.Fprintln(w, util.Colorize("ColorGreen", "Dados enviados com sucesso."))
	default:
		fmt.Fprintln(w, util.Colorize("ColorRed", "Falha ao enviar dados."))
	}
}

// pause 等待回车后退出；stdin 不是终端时直接返回
func pause(in *os.File, w io.Writer) {
	if in == nil || !term.IsTerminal(int(in.Fd())) {
		return
	}
	fmt.Fprintln(w, "Pressione Enter para sair...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}
