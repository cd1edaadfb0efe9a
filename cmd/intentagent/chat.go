package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/spf13/cobra"
	"github.com/tbxark/intentagent/agent"
	"github.com/tbxark/intentagent/types"
)

var chatKeep int

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the router in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		router, err := buildRouter(ctx, conf)
		if err != nil {
			return err
		}
		runner := adk.NewRunner(ctx, adk.RunnerConfig{
			Agent: agent.NewAgent("IntentRouter", "Routes ERP requests and collects their arguments", router),
		})
		transcript := agent.NewTranscript(chatKeep)
		reader := bufio.NewReader(os.Stdin)
		fmt.Println("您好，我可以帮您查询订单或起名，请输入您的需求：")
		for {
			fmt.Print("用户: ")
			input, rErr := reader.ReadString('\n')
			if rErr != nil {
				fmt.Println("输入结束，退出。")
				return nil
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			iter := runner.Run(ctx, transcript.Append(schema.UserMessage(input)))
			for {
				event, ok := iter.Next()
				if !ok {
					break
				}
				if event.Err != nil {
					return event.Err
				}
				msg, mErr := event.Output.MessageOutput.GetMessage()
				if mErr != nil {
					return mErr
				}
				transcript.Append(msg)
				printReply(msg)
				if types.Flag(fmt.Sprint(msg.Extra[agent.FlagExtraKey])).Terminal() {
					transcript.Reset()
				}
			}
		}
	},
}

func init() {
	chatCmd.Flags().IntVar(&chatKeep, "keep", 20, "messages kept in the transcript")
}

func printReply(msg *schema.Message) {
	flag := types.Flag(fmt.Sprint(msg.Extra[agent.FlagExtraKey]))
	fmt.Printf("\n助手 %s: %s\n", flag, msg.Content)
	if flag == types.FlagFunction {
		blob, _ := msg.Extra[agent.MemoryExtraKey].(string)
		if mem, err := types.DecodeMemory([]byte(blob)); err == nil && mem != nil {
			args, _ := sonic.MarshalString(mem.Answer.Arguments)
			fmt.Printf("调用: %s %s\n", mem.Answer.Name, args)
		}
	}
	fmt.Println("======")
}
