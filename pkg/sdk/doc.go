// Package docvoice provides an embedded client for the docvoice voice
// documentation agent: crawl a documentation site, index it into a Redis
// vector collection, and ask questions answered with text plus a rendered
// mp3 spoken answer.
//
//	client, err := docvoice.New(ctx,
//	    docvoice.WithRedis("localhost:6379", ""),
//	    docvoice.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	    docvoice.WithFirecrawl(os.Getenv("FIRECRAWL_API_KEY")),
//	)
//	if err != nil { ... }
//	defer client.Close()
//
//	if err := client.Setup(ctx, "https://docs.example.com"); err != nil { ... }
//	bundle := client.Ask(ctx, "How do I install it?")
//	fmt.Println(bundle.TextResponse, bundle.AudioPath)
package docvoice
